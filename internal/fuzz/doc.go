// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They guard against panics, hangs and
// out-of-range positions on arbitrary input.
//
// Назначение: загрузить байты в FileSet и прогнать их через лексер/парсер,
// проверяя инварианты диапазонов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
