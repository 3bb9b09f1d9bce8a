// Package xapi signs and sends requests to the microblogging platform's
// v2 API using the OAuth 1.0a HMAC-SHA1 scheme.
package xapi

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Credentials is the 4-tuple every signed request is derived from.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Signer computes per-request Authorization headers. Nonce and Now are
// injectable so signatures are reproducible in tests; the zero defaults
// are crypto/rand and the wall clock.
type Signer struct {
	creds Credentials
	Nonce func() string
	Now   func() time.Time
}

// NewSigner builds a signer with production nonce and clock sources.
func NewSigner(creds Credentials) *Signer {
	return &Signer{
		creds: creds,
		Nonce: randomNonce,
		Now:   time.Now,
	}
}

// AuthorizationHeader renders the OAuth header for one method+URL pair.
// The URL must carry no query string; the scheme signs it as-is.
func (s *Signer) AuthorizationHeader(method, rawURL string) string {
	params := map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_nonce":            s.Nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.Now().Unix(), 10),
		"oauth_token":            s.creds.AccessToken,
		"oauth_version":          "1.0",
	}
	params["oauth_signature"] = s.sign(method, rawURL, params)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, percentEncode(k)+`="`+percentEncode(params[k])+`"`)
	}
	return "OAuth " + strings.Join(parts, ", ")
}

// sign assembles METHOD&enc(url)&enc(sorted pairs) and HMAC-SHA1s it with
// enc(consumerSecret)&enc(tokenSecret), base64-encoding the digest.
func (s *Signer) sign(method, rawURL string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(params[k]))
	}

	base := strings.ToUpper(method) +
		"&" + percentEncode(rawURL) +
		"&" + percentEncode(strings.Join(pairs, "&"))

	key := percentEncode(s.creds.ConsumerSecret) + "&" + percentEncode(s.creds.AccessTokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

const upperhex = "0123456789ABCDEF"

// percentEncode is strict RFC 3986: only ALPHA / DIGIT / "-" / "." / "_" /
// "~" pass through. The signature is byte-exact, so this must not drift.
func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}

func randomNonce() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
