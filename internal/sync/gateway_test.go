package sync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	gosync "sync"
	"testing"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// fakeGateway 内存版 REST 网关，请求按路径计数，可整体切换为故障
type fakeGateway struct {
	mu           gosync.Mutex
	teams        map[string]model.Team
	news         []model.News
	announcement string

	failAll     bool
	failPutTeam bool

	requests     map[string]int
	deletedBlobs []string
	lastAnn      string

	server *httptest.Server
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{
		teams:    make(map[string]model.Team),
		requests: make(map[string]int),
	}
	g.server = httptest.NewServer(http.HandlerFunc(g.handle))
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) base() string { return g.server.URL }

func (g *fakeGateway) count(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[key]
}

func (g *fakeGateway) totalRequests() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, n := range g.requests {
		total += n
	}
	return total
}

func (g *fakeGateway) putTeam(team model.Team) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.teams[team.ID] = team
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (g *fakeGateway) handle(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.requests[r.Method+" "+r.URL.Path]++
	failed := g.failAll
	g.mu.Unlock()

	if failed {
		writeJSON(w, http.StatusInternalServerError,
			map[string]interface{}{"success": false, "message": "数据库连接失败"})
		return
	}

	switch {
	case r.URL.Path == "/teams" && r.Method == http.MethodGet:
		g.mu.Lock()
		out := make([]model.Team, 0, len(g.teams))
		for _, t := range g.teams {
			out = append(out, t)
		}
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": out})

	case r.URL.Path == "/teams" && r.Method == http.MethodPut:
		g.mu.Lock()
		fail := g.failPutTeam
		g.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError,
				map[string]interface{}{"success": false, "message": "写入失败"})
			return
		}
		var team model.Team
		if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
			writeJSON(w, http.StatusBadRequest,
				map[string]interface{}{"success": false, "message": err.Error()})
			return
		}
		g.putTeam(team)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": team})

	case r.URL.Path == "/teams" && r.Method == http.MethodDelete:
		g.mu.Lock()
		delete(g.teams, r.URL.Query().Get("id"))
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case r.URL.Path == "/news" && r.Method == http.MethodGet:
		g.mu.Lock()
		out := append([]model.News{}, g.news...)
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": out})

	case r.URL.Path == "/news":
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case r.URL.Path == "/announcement" && r.Method == http.MethodGet:
		g.mu.Lock()
		ann := g.announcement
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": ann})

	case r.URL.Path == "/announcement" && r.Method == http.MethodPut:
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		g.mu.Lock()
		g.announcement = body.Content
		g.lastAnn = body.Content
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case r.URL.Path == "/upload":
		var body struct {
			File     string `json:"file"`
			Pathname string `json:"pathname"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if !strings.HasPrefix(body.File, "data:") {
			writeJSON(w, http.StatusBadRequest,
				map[string]interface{}{"success": false, "message": "文件格式错误"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"url":     g.server.URL + "/blob/" + body.Pathname,
		})

	case r.URL.Path == "/blob-delete":
		var body struct {
			URL string `json:"url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		g.mu.Lock()
		g.deletedBlobs = append(g.deletedBlobs, body.URL)
		g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	default:
		writeJSON(w, http.StatusNotFound,
			map[string]interface{}{"success": false, "message": "not found"})
	}
}
