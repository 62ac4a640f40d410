package stats

import (
	"sort"

	"github.com/verte-zerg/telaffuz/internal/model"
)

// TopPhonemesByFrequency returns the top N vowels by how often they were heard.
func TopPhonemesByFrequency(aggs []model.PhonemeAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	type item struct {
		vowel string
		total int
	}
	items := make([]item, 0, len(aggs))
	for _, agg := range aggs {
		items = append(items, item{
			vowel: agg.Vowel,
			total: agg.Correct + agg.Incorrect,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].vowel < items[j].vowel
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].vowel)
	}
	return out
}
