package utils

// MaskAPIKey keeps the first and last four characters of a key.
// Keys of eight characters or fewer are masked entirely.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
