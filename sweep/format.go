package sweep

import "strconv"

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func fi(v int) string { return strconv.Itoa(v) }
