package keygen

import (
	"bytes"

	"github.com/lscpkg/lscpkg/internal/errors"
	"golang.org/x/crypto/ssh"
)

// PublicKeyInfo describes a parsed authorized_keys entry.
type PublicKeyInfo struct {
	Type        string // e.g. ssh-rsa, ssh-ed25519
	Fingerprint string // SHA256:...
	Comment     string
}

// ParsePublicKey parses the first authorized_keys entry in data.
func ParsePublicKey(data []byte) (*PublicKeyInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrPrecondition,
			"Public key is empty",
			"Provide the contents of an OpenSSH .pub file")
	}

	key, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPrecondition,
			"Public key is not in authorized_keys format",
			"Provide the contents of an OpenSSH .pub file, e.g. 'ssh-rsa AAAA... comment'")
	}

	return &PublicKeyInfo{
		Type:        key.Type(),
		Fingerprint: ssh.FingerprintSHA256(key),
		Comment:     comment,
	}, nil
}
