package cart

// Storage is the durable home of a session's serialized line list. Load
// returns nil data when nothing has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryStorage keeps the serialized cart in process memory. Used in tests
// and as the fallback when no durable backend is configured.
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]byte, error) {
	return m.data, nil
}

func (m *MemoryStorage) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}
