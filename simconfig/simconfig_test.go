package simconfig

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFromYaml(t *testing.T) {
	Convey("FromYaml", t, func() {
		Convey("a missing file yields Default, not an error", func() {
			cfg, err := FromYaml(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldBeNil)
			So(cfg.Get("attack_range", 0.055), ShouldEqual, float32(0.055))
		})

		Convey("a file with a kind/def envelope decodes overrides", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			contents := `
kind: sim
def:
  overrides:
    - key: attack_range
      val: 0.075
  difficulty:
    wolf_speed: 0.3
  economy:
    rare_weight: 0.4
`
			So(os.WriteFile(path, []byte(contents), 0o644), ShouldBeNil)

			cfg, err := FromYaml(path)
			So(err, ShouldBeNil)
			So(cfg.Get("attack_range", 0.055), ShouldAlmostEqual, 0.075, 1e-6)
			So(cfg.Get("missing_key", 1.0), ShouldEqual, float32(1.0))
			So(cfg.GetDifficulty("wolf_speed", 0.26), ShouldAlmostEqual, 0.3, 1e-6)
			So(cfg.GetEconomy("rare_weight", 0.3), ShouldAlmostEqual, 0.4, 1e-6)
		})

		Convey("a bare file without a def envelope decodes directly", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			contents := `
overrides:
  - key: lunge_range
    val: 0.5
`
			So(os.WriteFile(path, []byte(contents), 0o644), ShouldBeNil)

			cfg, err := FromYaml(path)
			So(err, ShouldBeNil)
			So(cfg.Get("lunge_range", 0.2), ShouldAlmostEqual, 0.5, 1e-6)
		})
	})
}
