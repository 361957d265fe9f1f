package services

import (
	"time"

	"github.com/sanketnagtilak/mern-project/utils"
)

type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

func (t TokenIssuer) Issue(id, kind string) (string, error) {
	return utils.GenerateJWT(t.Secret, id, kind, t.TTL)
}
