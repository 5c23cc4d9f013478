package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/examctrl/internal/exampkg"
	"github.com/ecodeclub/examctrl/internal/pkg/middleware"
	"github.com/ecodeclub/examctrl/internal/registry"
	"github.com/ecodeclub/examctrl/internal/relay"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(
	examHdl *exampkg.Handler,
	relayHdl *relay.Handler,
	statusHdl *registry.Handler,
) *egin.Component {
	res := egin.Load("web").Build()
	res.Use(middleware.NewMetricsBuilder().Build())
	res.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			// 考务 UI 只跑在考场服务器本机
			return strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "http://127.0.0.1")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	examHdl.PublicRoutes(res.Engine)
	relayHdl.PublicRoutes(res.Engine)
	statusHdl.PublicRoutes(res.Engine)
	return res
}
