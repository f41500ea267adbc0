package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"
)

func New(logger *slog.Logger, reader BlogReader) *zenrpc.Server {
	rpcService := NewBlogService(reader)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("blog", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "blogicum", nil))

	return rpcServer
}
