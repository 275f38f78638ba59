// Package jwks builds the bank's published JSON Web Key Set. Keys registered
// with the remote Dynamic Client Registration authority are fetched over HTTP
// and followed by the certificates listed in the local cert-list.json file.
//
// Keys are opaque: they are neither validated nor rewritten, and duplicates
// across the two sources are preserved.
package jwks
