package xiangqi

import (
	"fmt"
	"strings"
)

// Difficulty 电脑难度档位：决定搜索深度和启用哪些评估项。
type Difficulty int8

const (
	Easy   Difficulty = iota // 深度 1，偏向吃子的随机走法
	Medium                   // 深度 2，子力 + 位置分
	Hard                     // 深度 3，再加机动性/中心/协同
)

var difficultyDepth = [...]int{
	Easy:   1,
	Medium: 2,
	Hard:   3,
}

func (d Difficulty) Depth() int {
	if d < Easy || d > Hard {
		return difficultyDepth[Medium]
	}
	return difficultyDepth[d]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Medium:
		return "medium"
	default:
		return fmt.Sprintf("difficulty(%d)", int8(d))
	}
}

// ParseDifficulty 解析 "easy"/"medium"/"hard"，无法识别时退回 Medium。
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "shallow":
		return Easy
	case "hard", "deep":
		return Hard
	default:
		return Medium
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Hard {
		return nil, fmt.Errorf("unknown difficulty %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	*d = ParseDifficulty(string(b))
	return nil
}
