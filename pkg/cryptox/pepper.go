package cryptox

import (
	"os"
	"strings"
	"sync"
)

// Pepper is a site-wide secret appended to every password before hashing.
// It lives in a file outside the database so a leaked database dump alone is
// not enough to brute-force password hashes. An absent or empty file means
// no pepper, which is fine for dev.

var (
	pepperMu   sync.RWMutex
	pepperPath string
	pepper     string
	pepperOnce sync.Once
)

// SetPepperPath configures where the pepper file lives. Call once at startup
// before any hashing happens.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperPath = path
}

// GetPepper returns the pepper value, loading it from disk on first use.
func GetPepper() string {
	pepperOnce.Do(loadPepper)

	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

func loadPepper() {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepperPath == "" {
		return
	}

	data, err := os.ReadFile(pepperPath)
	if err != nil {
		return
	}
	pepper = strings.TrimSpace(string(data))
}
