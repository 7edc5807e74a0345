package diag

import (
	"fmt"
	"strings"
)

// Severity — уровень диагностики. Порядок значим: Info < Warning < Error.
type Severity uint8

const (
	SevInfo    Severity = iota // пропущенные токены верхнего уровня, пустой инициализатор
	SevWarning                 // лексер: незакрытые строки и комментарии, странные числа
	SevError                   // только фатальные ошибки лексера, парсера и загрузки
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is min or more severe; used to filter output.
func (s Severity) AtLeast(min Severity) bool { return s >= min }

// ParseSeverity читает имя уровня без учёта регистра ("info", "warning"/"warn", "error").
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO":
		return SevInfo, nil
	case "WARNING", "WARN":
		return SevWarning, nil
	case "ERROR":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q (want info|warning|error)", name)
}
