package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		from, to int
		want     []string
	}{
		{"向后移动", []string{"a", "b", "c", "d"}, 0, 2, []string{"b", "c", "a", "d"}},
		{"向前移动", []string{"a", "b", "c", "d"}, 3, 1, []string{"a", "d", "b", "c"}},
		{"相邻交换", []string{"a", "b"}, 0, 1, []string{"b", "a"}},
		{"原地不动", []string{"a", "b", "c"}, 1, 1, []string{"a", "b", "c"}},
		{"from 越界", []string{"a", "b"}, 5, 0, []string{"a", "b"}},
		{"to 越界", []string{"a", "b"}, 0, -1, []string{"a", "b"}},
		{"空切片", []string{}, 0, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Move(tt.in, tt.from, tt.to))
		})
	}
}

func TestMoveKeepsLength(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}
	got := Move(list, 4, 0)
	assert.Len(t, got, 5)
	assert.Equal(t, []int{5, 1, 2, 3, 4}, got)
}

func TestEdgeVelocity(t *testing.T) {
	// 带外速度为 0
	assert.Zero(t, EdgeVelocity(100, 50, 10))
	assert.Zero(t, EdgeVelocity(50, 50, 10))

	// 贴边满速
	assert.InDelta(t, 10, EdgeVelocity(0, 50, 10), 0.001)
	// 越过边缘按贴边算
	assert.InDelta(t, 10, EdgeVelocity(-20, 50, 10), 0.001)

	// 带内线性递增
	assert.InDelta(t, 5, EdgeVelocity(25, 50, 10), 0.001)

	// 非法触发带
	assert.Zero(t, EdgeVelocity(10, 0, 10))
}
