package encoder

// DefaultAlpha is the default smoothing strength of the target encoder.
const DefaultAlpha = 5.0

// Smooth blends the mean of a category observed count times with the global
// mean. The result tends to mean as count grows and to globalMean as count
// goes to zero; alpha is the count at which both weigh the same.
func Smooth(mean, count, globalMean, alpha float64) float64 {
	return (mean*count + globalMean*alpha) / (count + alpha)
}

type categoryStat struct {
	sum   float64
	count int
}

func (c *categoryStat) mean() float64 {
	return c.sum / float64(c.count)
}

// categoryStats accumulates target sums per category key
type categoryStats map[string]*categoryStat

func (s categoryStats) add(category string, target float64) {
	stat, ok := s[category]
	if !ok {
		stat = &categoryStat{}
		s[category] = stat
	}
	stat.sum += target
	stat.count++
}
