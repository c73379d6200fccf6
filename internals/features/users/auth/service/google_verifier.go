package service

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// FuturendaVerifier: verifikasi ID token Google (signature + audience),
// email_verified diteruskan ke service
type FuturendaVerifier struct {
	ClientID string
}

func (f FuturendaVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	if f.ClientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID belum diset")
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{f.ClientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	if claimSet.Sub == "" || claimSet.Email == "" {
		return nil, errors.New("claim sub/email kosong")
	}
	return &GoogleIdentity{
		Sub:           claimSet.Sub,
		Email:         claimSet.Email,
		EmailVerified: claimSet.EmailVerified,
		Name:          claimSet.Name,
	}, nil
}
