// Package fuzztests houses Go fuzz harnesses for the front-ends and the line
// rules: arbitrary bytes go through csfront/gofront, the resulting index is
// queried line by line and CR9001 is run over it. The goal is to catch panics,
// hangs and diagnostics on lines that are not actually too long.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
