// Package window содержит чистую арифметику квотных окон: суточного и
// недельного. Сбросы счётчиков «ленивые» — применяются при очередной
// валидации аккаунта, поэтому функции отвечают на вопрос «сколько окон
// прошло с момента последнего сброса», а не планируют задания.
package window

import "time"

// Week — длительность недельного квотного окна: семь фиксированных суток,
// без привязки к календарной неделе.
const Week = 7 * 24 * time.Hour

// IsNewDay сообщает, наступила ли новая календарная дата относительно
// последнего суточного сброса. Сравниваются именно даты в локальном
// времени вызывающего: вход в 23:59 и в 00:01 — разные окна.
func IsNewDay(lastReset, now time.Time) bool {
	ly, lm, ld := lastReset.Date()
	ny, nm, nd := now.Date()
	return ly != ny || lm != nm || ld != nd
}

// WeeksElapsed возвращает количество полных недельных окон, прошедших
// с момента последнего недельного сброса. 0 означает, что сброс не нужен.
func WeeksElapsed(lastReset, now time.Time) int {
	if !now.After(lastReset) {
		return 0
	}
	return int(now.Sub(lastReset) / Week)
}

// NextWeeklyReset возвращает новую отметку недельного сброса: исходная
// отметка, сдвинутая на прошедшие полные окна. Сдвиг на целое число окон
// гарантирует, что сброс срабатывает ровно один раз на окно, а не при
// каждом входе.
func NextWeeklyReset(lastReset, now time.Time) time.Time {
	return lastReset.Add(time.Duration(WeeksElapsed(lastReset, now)) * Week)
}
