package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarClamps(t *testing.T) {
	pb := newProgressBar(1, 3)
	defer pb.Stop()
	pb.Set(2)
	assert.Equal(t, progressTicks/2, pb.bar.Current())
	pb.Set(5)
	assert.Equal(t, progressTicks, pb.bar.Current())
	pb.Set(0)
	assert.Equal(t, 0, pb.bar.Current())
}
