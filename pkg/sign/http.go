package sign

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// HTTPSigner implements Signer against an external signing service
// speaking JSON over HTTP. The service holds the device-bound signing
// secret; this client only ships the salt and the timestamp.
type HTTPSigner struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// NewHTTPSigner builds a client for the signing service at base,
// e.g. "http://127.0.0.1:8080".
func NewHTTPSigner(base string, log zerolog.Logger) *HTTPSigner {
	return &HTTPSigner{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log.With().Str("component", "signer").Logger(),
	}
}

type signRequest struct {
	Time int64  `json:"time"`
	Salt string `json:"salt"`
}

type signResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Sign string `json:"sign"`
	} `json:"data"`
}

// Sign posts the salt to the service and returns the decoded signature.
func (s *HTTPSigner) Sign(timestampMS int64, salt []byte) ([]byte, error) {
	body, err := json.Marshal(signRequest{Time: timestampMS, Salt: hex.EncodeToString(salt)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignFailed, err)
	}

	resp, err := s.client.Post(s.base+"/sign", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSignFailed, resp.StatusCode)
	}

	var out signResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSignFailed, err)
	}
	if out.Code != 0 {
		return nil, fmt.Errorf("%w: code %d: %s", ErrSignFailed, out.Code, out.Msg)
	}

	sig, err := hex.DecodeString(out.Data.Sign)
	if err != nil {
		return nil, fmt.Errorf("%w: bad signature hex: %v", ErrSignFailed, err)
	}

	s.log.Debug().Int("salt_len", len(salt)).Int("sign_len", len(sig)).Msg("signature obtained")
	return sig, nil
}
