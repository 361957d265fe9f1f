package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Image is a stored listing image opened for reading.
type Image struct {
	io.ReadCloser
	Name        string
	ContentType string
	Length      int64
}

// ImageRepository keeps listing images in the GridFS "images" bucket.
type ImageRepository struct {
	bucket *gridfs.Bucket
}

func NewImageRepository(db *mongo.Database) (*ImageRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("ImageRepository: %w", err)
	}
	return &ImageRepository{bucket: bucket}, nil
}

func (r *ImageRepository) Upload(ctx context.Context, filename, contentType string, src io.Reader) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	stream, err := r.bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return "", fmt.Errorf("ImageRepository.Upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	if _, err := io.Copy(stream, src); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("ImageRepository.Upload copy: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("ImageRepository.Upload close: %w", err)
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

func (r *ImageRepository) Open(ctx context.Context, id string) (*Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	stream, err := r.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ImageRepository.Open: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	file := stream.GetFile()
	img := &Image{
		ReadCloser:  stream,
		Name:        file.Name,
		ContentType: "application/octet-stream",
		Length:      file.Length,
	}
	if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
		img.ContentType = ct
	}
	return img, nil
}
