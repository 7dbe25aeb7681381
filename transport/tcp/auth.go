/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package tcp

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/asn1"
	"encoding/base64"
	"math/big"
)

// jwkPrivateKey rebuilds an ECDSA P-256 private key from the JWK "d"
// component, which is how the server hands out per-user signing tokens:
// base64url, no padding, big-endian, exactly 32 bytes for P-256.
func jwkPrivateKey(token string) (*ecdsa.PrivateKey, error) {
	d, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}

	curve := elliptic.P256()
	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = curve
	priv.D = new(big.Int).SetBytes(d)
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(d)

	return priv, nil
}

// signChallenge signs the SHA-256 digest of the challenge bytes with the
// given private key and returns the DER-encoded (r,s) signature, base64
// standard encoded and newline terminated, as the server expects on the
// wire.
func signChallenge(priv *ecdsa.PrivateKey, challenge []byte) ([]byte, error) {
	h := sha256.Sum256(challenge)

	r, s, err := ecdsa.Sign(rand.Reader, priv, h[:])
	if err != nil {
		return nil, err
	}

	der, err := asn1.Marshal(struct {
		R, S *big.Int
	}{r, s})
	if err != nil {
		return nil, err
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(der))+1)
	base64.StdEncoding.Encode(out, der)
	out[len(out)-1] = '\n'

	return out, nil
}
