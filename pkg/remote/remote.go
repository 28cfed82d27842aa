// Package remote 提供远程显示面：连接状态决定远程 Screen 是否可用，
// Visual 描述以 structpb 结构在两端交换。远程截图不支持。
package remote

import (
	"fmt"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var log = logger.Named("SX.Remote")

// Link 远程连接
type Link interface {
	// Healthy 连接是否可用
	Healthy() bool
	Close() error
}

// Surface 远程显示面
type Surface struct {
	addr string
	link Link
}

// NewSurface 用已建立的连接创建远程显示面
func NewSurface(addr string, link Link) *Surface {
	return &Surface{addr: addr, link: link}
}

// Addr 远程地址
func (s *Surface) Addr() string { return s.addr }

// Healthy 连接是否可用
func (s *Surface) Healthy() bool { return s.link != nil && s.link.Healthy() }

// Screen 创建远程 Screen 变体，IsValid 跟随连接状态
func (s *Surface) Screen(id int, bounds geom.Rect) *visual.Visual {
	return visual.NewRemoteScreen(id, bounds, s.Healthy)
}

// Close 关闭连接
func (s *Surface) Close() error {
	if s.link == nil {
		return nil
	}
	if err := s.link.Close(); err != nil {
		return fmt.Errorf("关闭远程连接失败 (%s): %w", s.addr, err)
	}
	log.Info("remote %s closed", s.addr)
	return nil
}
