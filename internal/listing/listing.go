// Package listing implements the roster filter/sort pipeline: given a
// user's people (with contacts and transactions loaded), a group filter, a
// search term, and a sort key, it produces the display-ordered subset. The
// pipeline is pure and never mutates the input slice.
package listing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"borrowtrack/internal/ledger"
	"borrowtrack/internal/models"
)

// AllGroups is the sentinel group filter meaning "do not filter by group".
const AllGroups = "all"

// SortKey selects the ordering policy for the roster.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByBalanceHigh SortKey = "balance-high"
	SortByBalanceLow  SortKey = "balance-low"
	SortByLastPaid    SortKey = "last-paid"
)

// Options holds the roster selection parameters.
type Options struct {
	GroupID string
	Search  string
	Sort    SortKey
}

// Apply filters and orders people according to opts. The returned slice is
// freshly allocated; the input and its elements are left untouched.
func Apply(people []models.Person, opts Options) []models.Person {
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		if matches(p, opts) {
			out = append(out, p)
		}
	}

	switch opts.Sort {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByBalanceHigh:
		balances := balancesOf(out)
		sort.SliceStable(out, func(i, j int) bool {
			return balances[out[i].ID].GreaterThan(balances[out[j].ID])
		})
	case SortByBalanceLow:
		balances := balancesOf(out)
		sort.SliceStable(out, func(i, j int) bool {
			return balances[out[i].ID].LessThan(balances[out[j].ID])
		})
	case SortByLastPaid:
		sortByPaymentPriority(out)
	}
	return out
}

// matches applies the group filter and the search term. Search is a
// case-insensitive substring match on the name, or a substring match on any
// contact number.
func matches(p models.Person, opts Options) bool {
	if opts.GroupID != "" && opts.GroupID != AllGroups {
		if p.GroupID == nil || *p.GroupID != opts.GroupID {
			return false
		}
	}
	if opts.Search == "" {
		return true
	}
	query := strings.ToLower(opts.Search)
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, c := range p.Contacts {
		if strings.Contains(c.Number, query) {
			return true
		}
	}
	return false
}

// balancesOf derives each person's balance once so comparators stay cheap.
func balancesOf(people []models.Person) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(people))
	for _, p := range people {
		balances[p.ID] = ledger.Summarize(p.Transactions).Balance
	}
	return balances
}

// sortByPaymentPriority orders people who still owe money first, oldest
// payment first, with "never paid" treated as oldest of all. People with no
// outstanding balance go to the end in their incoming relative order.
func sortByPaymentPriority(people []models.Person) {
	balances := balancesOf(people)
	sort.SliceStable(people, func(i, j int) bool {
		iOwes := balances[people[i].ID].IsPositive()
		jOwes := balances[people[j].ID].IsPositive()
		if iOwes != jOwes {
			return iOwes
		}
		if !iOwes {
			return false
		}
		return lastPaidUnix(people[i]) < lastPaidUnix(people[j])
	})
}

func lastPaidUnix(p models.Person) int64 {
	if p.LastPaidDate == nil {
		return 0
	}
	return p.LastPaidDate.Unix()
}
