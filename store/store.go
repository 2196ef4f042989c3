// Package store concentra o acesso ao banco com read-through no cache de tags.
// Toda leitura cacheada declara suas tags; toda escrita invalida as tags afetadas.
package store

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jinzhu/gorm"
)

// ErrNotFound cobre entidade inexistente E caller sem direito sobre ela.
// No endpoint público do banner os dois colapsam num 404 opaco de propósito.
var ErrNotFound = errors.New("not found")

// retryRead tenta a leitura de novo uma única vez em falha transitória de banco.
// Not-found não é transitório, então não repete.
func retryRead(fn func() error) error {
	err := fn()
	if err == nil || gorm.IsRecordNotFoundError(err) {
		return err
	}
	return fn()
}

// normalizeOrigin reduz uma URL à sua origem (scheme://host), minúscula e sem
// porta default. Vazio quando não dá pra extrair host nenhum.
func normalizeOrigin(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}
	return scheme + "://" + host
}

// OriginsMatch diz se a URL do referer pertence à origem registrada do produto.
func OriginsMatch(registeredURL, refererURL string) bool {
	a := normalizeOrigin(registeredURL)
	b := normalizeOrigin(refererURL)
	return a != "" && a == b
}
