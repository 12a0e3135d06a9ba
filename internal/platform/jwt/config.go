package jwtmw

import "os"

// EnvKeyJWTSecret は署名鍵を保持する環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

// SecretFromEnv returns the signing secret, or "" when authentication is disabled.
func SecretFromEnv() string {
	return os.Getenv(EnvKeyJWTSecret)
}
