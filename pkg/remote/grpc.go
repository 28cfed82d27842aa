package remote

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// grpcLink 以 gRPC 连接状态作为健康状态
type grpcLink struct {
	conn *grpc.ClientConn
}

// Healthy 连接未失败也未关闭
func (l *grpcLink) Healthy() bool {
	switch l.conn.GetState() {
	case connectivity.TransientFailure, connectivity.Shutdown:
		return false
	}
	return true
}

func (l *grpcLink) Close() error { return l.conn.Close() }

// DialGRPC 连接 gRPC 远程显示面，立即开始建立连接
func DialGRPC(addr string, opts ...grpc.DialOption) (*Surface, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 gRPC 连接失败 (%s): %w", addr, err)
	}
	conn.Connect()
	log.Info("remote grpc %s: %s", addr, conn.GetState())
	return NewSurface(addr, &grpcLink{conn: conn}), nil
}
