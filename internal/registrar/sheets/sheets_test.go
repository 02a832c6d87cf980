package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type call struct {
	method string
	path   string
	body   string
}

type fakeSheetsAPI struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, call{method: r.Method, path: r.URL.Path, body: string(body)})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		_, _ = io.WriteString(w, `{"sheets":[{"properties":{"title":"Junior"}}]}`)
		return
	}
	_, _ = io.WriteString(w, `{}`)
}

func (f *fakeSheetsAPI) find(method, fragment string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.method == method && strings.Contains(c.path, fragment) {
			out = append(out, c)
		}
	}
	return out
}

func TestClient_WriteRosters(t *testing.T) {
	api := &fakeSheetsAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c, err := NewWithOptions(ctx, "sheet-1", time.UTC,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	out, err := c.WriteRosters(ctx, []domain.Roster{
		{Category: "junior", GeneratedAt: at, Registrations: []domain.Registration{{
			FullName: "Amina", Place: "Kochi", TeamName: "Falcons", Category: "junior",
			Programs: []string{"qiraat"}, CreatedAt: at,
		}}},
		{Category: "senior", GeneratedAt: at},
	})
	require.NoError(t, err)
	require.Equal(t, "sheet-1", out.SpreadsheetID)
	require.Equal(t, []domain.SheetTab{{Title: "Junior", Rows: 1}, {Title: "Senior", Rows: 0}}, out.Tabs)

	adds := api.find(http.MethodPost, ":batchUpdate")
	require.Len(t, adds, 1)
	require.Contains(t, adds[0].body, `"title":"Senior"`)
	require.NotContains(t, adds[0].body, `"title":"Junior"`)

	require.Len(t, api.find(http.MethodPost, ":clear"), 2)

	writes := api.find(http.MethodPut, "/values/")
	require.Len(t, writes, 2)

	var vr struct {
		Values [][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(writes[0].body), &vr))
	require.Len(t, vr.Values, 2)
	require.Equal(t, "Name", vr.Values[0][0])
	require.Equal(t, "Amina", vr.Values[1][0])
	require.Equal(t, "JUNIOR", vr.Values[1][2])
}

func TestTabTitle(t *testing.T) {
	require.Equal(t, "Junior", TabTitle("junior"))
	require.Equal(t, "Custom", TabTitle("custom"))
	require.Empty(t, TabTitle(""))
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), "/does/not/exist.json", "sheet-1", nil)
	require.Error(t, err)
}
