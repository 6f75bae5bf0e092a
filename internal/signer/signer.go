// Package signer computes the request signature required by the sign endpoint.
package signer

import (
	"crypto/md5"
	"encoding/hex"
)

const signSalt = "tiebaclient!!!"

// Sign returns the lowercase hex MD5 of "kw=<forum>tbs=<tbs>tiebaclient!!!".
func Sign(forum, tbs string) string {
	sum := md5.Sum([]byte("kw=" + forum + "tbs=" + tbs + signSalt))
	return hex.EncodeToString(sum[:])
}
