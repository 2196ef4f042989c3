package cache

import (
	"fmt"
	"sync"
)

// Kind identifica o tipo de recurso de uma tag de invalidação.
type Kind string

const (
	KindProducts      Kind = "products"
	KindCountries     Kind = "countries"
	KindCountryGroups Kind = "countryGroups"
	KindSubscription  Kind = "subscription"
	KindProductViews  Kind = "productViews"
)

type tagScope int

const (
	scopeGlobal tagScope = iota
	scopeUser
	scopeID
)

// Tag é a chave de invalidação associada a leituras cacheadas.
// Estruturada (escopo + kind + id) de propósito: string concatenada daria colisão
// entre kinds diferentes.
type Tag struct {
	scope tagScope
	kind  Kind
	id    string
}

// GlobalTag cobre todas as entidades de um kind.
func GlobalTag(k Kind) Tag {
	return Tag{scope: scopeGlobal, kind: k}
}

// UserTag cobre todas as entidades de um kind pertencentes a um tenant.
func UserTag(userID string, k Kind) Tag {
	return Tag{scope: scopeUser, kind: k, id: userID}
}

// IDTag cobre uma entidade específica.
func IDTag(entityID string, k Kind) Tag {
	return Tag{scope: scopeID, kind: k, id: entityID}
}

func (t Tag) String() string {
	switch t.scope {
	case scopeUser:
		return fmt.Sprintf("user:%s:%s", t.id, t.kind)
	case scopeID:
		return fmt.Sprintf("id:%s:%s", t.id, t.kind)
	default:
		return fmt.Sprintf("global:%s", t.kind)
	}
}

type entry struct {
	value any
	// snapshot das versões de cada tag (e da tag global do kind) no momento do store
	versions map[Tag]uint64
}

// Cache memoiza leituras caras sob um conjunto de tags de invalidação.
// Instância explícita de processo: criada no start, nada sobrevive a restart.
// Best-effort por contrato — na dúvida a entrada é tratada como stale e o loader
// roda de novo contra a fonte de verdade.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	versions map[Tag]uint64
}

func New() *Cache {
	return &Cache{
		entries:  make(map[string]entry),
		versions: make(map[Tag]uint64),
	}
}

// Invalidate marca como stale toda entrada que carrega qualquer uma das tags.
// Atômico em relação aos leitores: quem checar a tag depois daqui dá miss.
func (c *Cache) Invalidate(tags ...Tag) {
	if c == nil {
		return
	}
	c.mu.Lock()
	for _, t := range tags {
		c.versions[t]++
	}
	c.mu.Unlock()
}

// Read devolve o valor cacheado para key se todas as tags da entrada continuam
// na versão do momento do store; senão invoca loader e guarda o resultado sob tags.
// key deve identificar o loader + argumentos (ex: "product:<id>").
// Erros do loader nunca são cacheados. Um *Cache nil degrada para loader direto.
func Read[T any](c *Cache, key string, tags []Tag, loader func() (T, error)) (T, error) {
	if c == nil {
		return loader()
	}

	c.mu.RLock()
	if e, ok := c.entries[key]; ok && c.fresh(e) {
		v, ok := e.value.(T)
		c.mu.RUnlock()
		if ok {
			return v, nil
		}
		// tipo inesperado sob a mesma key: trata como stale
	} else {
		c.mu.RUnlock()
	}

	// O snapshot das versões é tirado ANTES do loader rodar: um Invalidate que
	// chegar com a carga em andamento deixa a entrada já nascida stale, em vez
	// de ser absorvido e servir o valor pré-invalidação como fresco.
	c.mu.RLock()
	versions := make(map[Tag]uint64, len(tags)*2)
	for _, t := range tags {
		versions[t] = c.versions[t]
		// invalidar global:K precisa atingir leitores user/id do mesmo kind,
		// então toda entrada também snapshota a tag global do kind
		g := GlobalTag(t.kind)
		versions[g] = c.versions[g]
	}
	c.mu.RUnlock()

	v, err := loader()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	c.entries[key] = entry{value: v, versions: versions}
	c.mu.Unlock()

	return v, nil
}

// fresh exige c.mu (read) já adquirido.
func (c *Cache) fresh(e entry) bool {
	for t, seen := range e.versions {
		if c.versions[t] != seen {
			return false
		}
	}
	return true
}
