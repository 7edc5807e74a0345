package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"kappa/internal/diag"
	"kappa/internal/source"
	"kappa/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key: sha256 over the schema version and the file content.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// KeyFor возвращает ключ кэша для нормализованного содержимого файла.
func KeyFor(content []byte) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	h.Write(schema[:])
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DiskCache хранит результаты токенизации по хэшу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedToken — токен без FileID: при чтении span привязывается к текущему файлу.
type CachedToken struct {
	Kind      uint8
	Start     uint32
	End       uint32
	Text      string
	ValueKind uint8
	Num       float64
	Str       string
}

// CachedDiag — диагностика лексера без заметок.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

// DiskPayload stores the token stream of one file, or the fatal lexer error
// that stopped it, plus the warnings emitted on the way.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Tokens []CachedToken
	Diags  []CachedDiag
	Fatal  *CachedDiag
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens (and creates) a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// A payload written by another schema version counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельные читатели не видели полуудалённое состояние
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func tokensToPayload(tokens []token.Token, diags []diag.Diagnostic, fatal *diag.Error) *DiskPayload {
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Tokens: make([]CachedToken, len(tokens)),
	}
	for i, tok := range tokens {
		ct := CachedToken{
			Kind:      uint8(tok.Kind),
			Start:     tok.Span.Start,
			End:       tok.Span.End,
			Text:      tok.Text,
			ValueKind: uint8(tok.Value.Kind),
		}
		ct.Num, _ = tok.Value.Number()
		ct.Str, _ = tok.Value.Str()
		payload.Tokens[i] = ct
	}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, toCachedDiag(d))
	}
	if fatal != nil {
		cd := toCachedDiag(fatal.Diag)
		payload.Fatal = &cd
	}
	return payload
}

func toCachedDiag(d diag.Diagnostic) CachedDiag {
	return CachedDiag{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Start:    d.Primary.Start,
		End:      d.Primary.End,
		Message:  d.Message,
	}
}

func (cd CachedDiag) restore(file source.FileID) diag.Diagnostic {
	return diag.New(
		diag.Severity(cd.Severity),
		diag.Code(cd.Code),
		source.Span{File: file, Start: cd.Start, End: cd.End},
		cd.Message,
	)
}

// payloadTokens восстанавливает токены, привязывая их к file.
func payloadTokens(payload *DiskPayload, file source.FileID) []token.Token {
	tokens := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		tok := token.Token{
			Kind: token.Kind(ct.Kind),
			Span: source.Span{File: file, Start: ct.Start, End: ct.End},
			Text: ct.Text,
		}
		switch token.ValueKind(ct.ValueKind) {
		case token.ValueNumber:
			tok.Value = token.NumberValue(ct.Num)
		case token.ValueString:
			tok.Value = token.StringValue(ct.Str)
		}
		tokens[i] = tok
	}
	return tokens
}
