package apifootball

import (
	"slices"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type providerErrorReporter interface {
	providerErrors() string
}

type fixturesEnvelope struct {
	Errors   rawErrors     `json:"errors"`
	Results  int           `json:"results"`
	Paging   paging        `json:"paging"`
	Response []fixtureItem `json:"response"`
}

func (e *fixturesEnvelope) providerErrors() string {
	return e.Errors.String()
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type fixtureItem struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Date      string `json:"date"`
		Timestamp int64  `json:"timestamp"`
		Venue     struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"league"`
	Teams struct {
		Home teamItem `json:"home"`
		Away teamItem `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type teamItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// rawErrors holds the provider "errors" field, which is [] when clean and an object otherwise.
type rawErrors []byte

func (r *rawErrors) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func (r rawErrors) String() string {
	text := strings.TrimSpace(string(r))
	switch text {
	case "", "null", "[]", "{}":
		return ""
	}

	var asMap map[string]any
	if err := sonic.UnmarshalString(text, &asMap); err == nil && len(asMap) > 0 {
		parts := make([]string, 0, len(asMap))
		for key, value := range asMap {
			parts = append(parts, key+": "+strings.TrimSpace(toString(value)))
		}
		slices.Sort(parts)
		return strings.Join(parts, "; ")
	}
	return text
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		out, err := sonic.MarshalString(v)
		if err != nil {
			return ""
		}
		return out
	}
}
