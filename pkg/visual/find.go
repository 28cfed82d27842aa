package visual

import (
	"errors"
	"fmt"
	"time"
)

// Finder 查找服务：在 where 覆盖的区域内查找 what（Image 或 Pattern），
// 返回 Match 变体。Find 未命中时返回 (nil, nil)。
type Finder interface {
	Find(where, what *Visual) (*Visual, error)
	FindAll(where, what *Visual) ([]*Visual, error)
}

// Find 查找 what，命中结果记为 LastMatch；未命中返回 ErrNotFound 并清空 LastMatch
func (v *Visual) Find(f Finder, what *Visual) (*Visual, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%s 不可用: %w", v, ErrNotSupported)
	}
	start := time.Now()
	m, err := f.Find(v, what)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		v.lastMatch = nil
		log.LogEvent("FIND", false, elapsed, fmt.Sprintf("%s in %s: %v", what, v, err))
		return nil, fmt.Errorf("查找失败: %w", err)
	}
	v.lastMatch = m
	if m == nil {
		log.LogEvent("FIND", false, elapsed, fmt.Sprintf("%s in %s: not found", what, v))
		return nil, ErrNotFound
	}
	log.LogEvent("FIND", true, elapsed, m.String())
	return m, nil
}

// Exists 查找 what 是否存在，查找服务出错时视为不存在
func (v *Visual) Exists(f Finder, what *Visual) bool {
	m, err := v.Find(f, what)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Warn("Exists: %v", err)
	}
	return m != nil
}

// FindAll 查找所有匹配，结果按发现顺序记为 LastMatches，分数最高者记为 LastMatch
func (v *Visual) FindAll(f Finder, what *Visual) ([]*Visual, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%s 不可用: %w", v, ErrNotSupported)
	}
	matches, err := f.FindAll(v, what)
	if err != nil {
		v.lastMatch = nil
		v.lastMatches = nil
		return nil, fmt.Errorf("查找失败: %w", err)
	}

	v.lastMatches = matches
	v.lastMatch = nil
	for _, m := range matches {
		if v.lastMatch == nil || m.score > v.lastMatch.score {
			v.lastMatch = m
		}
	}
	log.Debug("FindAll: %s in %s -> %d matches", what, v, len(matches))
	return matches, nil
}

// FindBy 按查找方式查找：ONE/ANY 走 Find，ALL 走 FindAll，BEST 只返回分数最高的匹配
func (v *Visual) FindBy(f Finder, what *Visual, t FindType) ([]*Visual, error) {
	switch t {
	case FindTypeOne, FindTypeAny:
		m, err := v.Find(f, what)
		if err != nil {
			return nil, err
		}
		return []*Visual{m}, nil
	case FindTypeAll:
		return v.FindAll(f, what)
	case FindTypeBest:
		if _, err := v.FindAll(f, what); err != nil {
			return nil, err
		}
		if v.lastMatch == nil {
			return nil, ErrNotFound
		}
		return []*Visual{v.lastMatch}, nil
	}
	return nil, fmt.Errorf("查找方式 %s: %w", t, ErrNotSupported)
}
