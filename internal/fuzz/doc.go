// Package fuzztests houses Go fuzz harnesses for the formatting engine.
//
// Назначение: прогонять произвольные байты через jsonfix.Format со всеми
// комбинациями настроек и проверять, что движок не паникует, не зависает,
// а успешный вывод строгий, стабильный и отсортирован как просили.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: jsonfix, internal/jsonv, internal/testkit.
package fuzztests
