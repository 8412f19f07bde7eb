package session

import (
	"testing"

	"github.com/lumenrig/projplan/internal/config"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardSettings() (config.Defaults, config.OverlapConfig) {
	return config.Defaults{
			ThrowDistance:   4,
			ImageWidth:      2,
			ThrowRatio:      2,
			AspectW:         16,
			AspectH:         9,
			EdgeBlend:       0.2,
			DuplicateOffset: 1,
			AlignSpacing:    1,
		}, config.OverlapConfig{
			ThrowTolerance:  0.2,
			ProximityFactor: 0.5,
		}
}

func TestConfigFrom_MatchesDefaultConfig(t *testing.T) {
	d, o := standardSettings()
	cfg, err := ConfigFrom(d, o, "metric")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFrom_Units(t *testing.T) {
	d, o := standardSettings()
	cfg, err := ConfigFrom(d, o, "imperial")
	require.NoError(t, err)
	assert.Equal(t, projection.Imperial, cfg.Units)
}

func TestConfigFrom_Invalid(t *testing.T) {
	cases := map[string]func(*config.Defaults, *config.OverlapConfig){
		"unsettled":  func(d *config.Defaults, _ *config.OverlapConfig) { d.ThrowRatio = 3 },
		"aspect":     func(d *config.Defaults, _ *config.OverlapConfig) { d.AspectH = 0 },
		"edge blend": func(d *config.Defaults, _ *config.OverlapConfig) { d.EdgeBlend = 1.5 },
		"spacing":    func(d *config.Defaults, _ *config.OverlapConfig) { d.AlignSpacing = 0 },
		"tolerance":  func(_ *config.Defaults, o *config.OverlapConfig) { o.ThrowTolerance = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d, o := standardSettings()
			mutate(&d, &o)
			_, err := ConfigFrom(d, o, "metric")
			assert.ErrorIs(t, err, model.ErrOutOfDomain)
		})
	}
}
