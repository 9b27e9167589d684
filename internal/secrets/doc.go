// Package secrets seals secret values for GitHub's Actions secret store.
//
// GitHub publishes a per-repository X25519 public key and only accepts
// values encrypted with a libsodium sealed box (crypto_box_seal). The
// equivalent construction is golang.org/x/crypto/nacl/box.SealAnonymous:
// an ephemeral sender key pair, X25519 key agreement and XSalsa20-Poly1305.
// A fresh ephemeral key is generated for every call, so sealing the same
// plaintext twice never yields the same ciphertext.
//
// Only the repository's private key (held by GitHub) can open a seal. Open
// and GenerateKeyPair exist so callers can verify round trips locally.
package secrets
