// Package codec seals session records before they are persisted.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrShortCipherText = errors.New("cipher text too short")

// Encrypt encrypts text with AES-CFB under key and returns URL-safe base64.
// key must be 16, 24 or 32 bytes.
func Encrypt(key, text []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("encrypt: could not create cipher: %w", err)
	}
	ciphertext := make([]byte, aes.BlockSize+len(text))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("encrypt: reading iv: %w", err)
	}
	cfb := cipher.NewCFBEncrypter(block, iv)
	cfb.XORKeyStream(ciphertext[aes.BlockSize:], text)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

func Decrypt(key []byte, text string) ([]byte, error) {
	cipherText, err := base64.URLEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decrypt: error decoding base64: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("decrypt: could not create cipher: %w", err)
	}
	if len(cipherText) < aes.BlockSize {
		return nil, fmt.Errorf("decrypt: %w", ErrShortCipherText)
	}
	iv := cipherText[:aes.BlockSize]
	cipherText = cipherText[aes.BlockSize:]
	cfb := cipher.NewCFBDecrypter(block, iv)
	cfb.XORKeyStream(cipherText, cipherText)
	return cipherText, nil
}

// Seal JSON-encodes v and encrypts it.
func Seal(key []byte, v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("seal: encoding record: %w", err)
	}
	return Encrypt(key, b)
}

// Open decrypts sealed and decodes it into v. A wrong key shows up as a
// decoding error.
func Open(key []byte, sealed string, v interface{}) error {
	b, err := Decrypt(key, sealed)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("open: decoding record: %w", err)
	}
	return nil
}
