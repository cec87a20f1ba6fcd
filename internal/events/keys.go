package events

// KeyPrefix - префиксы для стримов событий
type KeyPrefix string

const (
	PrefixLinks  KeyPrefix = "links"  // events:links
	PrefixClicks KeyPrefix = "clicks" // events:clicks
)

const streamRoot = "events"

// KeyBuilder - построитель ключей стримов
type KeyBuilder struct {
	namespace string
}

func NewKeyBuilder(namespace string) *KeyBuilder {
	return &KeyBuilder{namespace: namespace}
}

// Build создает ключ с префиксом и опциональным namespace
func (k *KeyBuilder) Build(prefix KeyPrefix, parts ...string) string {
	key := streamRoot + ":" + string(prefix)

	if k.namespace != "" {
		key = k.namespace + ":" + key
	}

	for _, part := range parts {
		key += ":" + part
	}

	return key
}

// Stream returns the stream an event of type t is appended to.
func (k *KeyBuilder) Stream(t EventType) string {
	if t == EventClickRecorded {
		return k.Build(PrefixClicks)
	}
	return k.Build(PrefixLinks)
}
