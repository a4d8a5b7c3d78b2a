package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/rs"
)

// StoredCodeword is the on-disk form of an encoded message.
type StoredCodeword struct {
	Prime     uint64            `json:"prime"`
	N         int               `json:"n"`
	K         int               `json:"k"`
	Symbols   []uint64          `json:"symbols"`
	Generator []uint64          `json:"generator,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// FromEncodeResult captures an encoded message for storage.
func FromEncodeResult(res *rs.EncodeResult) *StoredCodeword {
	return &StoredCodeword{
		Prime:     res.Codeword.Field.Prime(),
		N:         res.Codeword.Len(),
		K:         res.K,
		Symbols:   append([]uint64(nil), res.Codeword.Symbols...),
		Generator: res.Generator.Coefficients(),
	}
}

// Codeword rebuilds the stored symbols over their field.
func (s *StoredCodeword) Codeword() (rs.Codeword, error) {
	f, err := field.New(s.Prime)
	if err != nil {
		return rs.Codeword{}, fmt.Errorf("invalid stored prime: %w", err)
	}
	if len(s.Symbols) != s.N {
		return rs.Codeword{}, fmt.Errorf("stored codeword has %d symbols, header says %d", len(s.Symbols), s.N)
	}
	return rs.Codeword{Field: f, Symbols: append([]field.Element(nil), s.Symbols...)}, nil
}

// Config returns the code parameters the codeword was produced with.
func (s *StoredCodeword) Config() rs.Config {
	return rs.Config{Prime: s.Prime, N: s.N, K: s.K}
}

type CodewordFile struct {
	filepath string
}

func NewCodewordFile(filepath string) *CodewordFile {
	return &CodewordFile{
		filepath: filepath,
	}
}

func (s *CodewordFile) Save(stored *StoredCodeword) error {
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal codeword: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *CodewordFile) Load() (*StoredCodeword, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var stored StoredCodeword
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal codeword: %w", err)
	}

	return &stored, nil
}

func (s *CodewordFile) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

func (s *CodewordFile) Delete() error {
	if !s.Exists() {
		return nil
	}
	return os.Remove(s.filepath)
}
