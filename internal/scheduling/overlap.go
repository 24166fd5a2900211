package scheduling

import "time"

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
//
// Пересечение есть только при строгих неравенствах:
// aStart < bEnd && aEnd > bStart
// Смежные интервалы (aEnd == bStart) НЕ пересекаются
//
// Эту же семантику обязан повторять exclusion constraint в БД
// (tstzrange && tstzrange), иначе проверка на чтении и запись разойдутся
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
