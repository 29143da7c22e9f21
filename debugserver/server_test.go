package debugserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/sim"
)

func TestServeSnapshot(t *testing.T) {
	Convey("GET /snapshot returns the world's current deterministic state", t, func() {
		world := sim.InitRun(99, 0)
		world.Start()
		world.Player.HP = 0.4

		srv := NewServer(":0", world)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)

		srv.router.ServeHTTP(rec, req)
		So(rec.Code, ShouldEqual, http.StatusOK)

		var snap sim.Snapshot
		err := json.Unmarshal(rec.Body.Bytes(), &snap)
		So(err, ShouldBeNil)
		So(snap.Player.HP, ShouldEqual, float32(0.4))
	})
}
