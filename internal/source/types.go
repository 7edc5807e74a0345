package source

import "strings"

// FileID — индекс файла в FileSet.
type FileID uint32

// FileFlags — что известно о байтах файла. Содержимое никогда не переписывается,
// поэтому диапазоны токенов и узлов остаются смещениями в исходном буфере.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // из памяти: stdin, тесты, fuzz
	FileHasBOM                        // начинается с U+FEFF; лексер пропускает его как пробел
	FileHasCRLF                       // есть "\r\n"; '\r' попадает в диапазоны как пробел
)

var flagNames = [...]struct {
	flag FileFlags
	name string
}{
	{FileVirtual, "virtual"},
	{FileHasBOM, "bom"},
	{FileHasCRLF, "crlf"},
}

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

// String lists the set flags, e.g. "virtual|crlf"; "-" when none are set.
func (f FileFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "|")
}

// File — один исходник: байты как есть, индекс строк и sha256 содержимого.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol — позиция для человека, обе координаты с единицы.
// Col считается в байтах, '\r' перед '\n' входит в строку.
type LineCol struct {
	Line uint32
	Col  uint32
}
