package startup

import (
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/event"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository/dao"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/service"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/web"
	testioc "github.com/ecodeclub/examctrl/internal/test/ioc"
)

func InitHandler() (*web.Handler, error) {
	db := testioc.InitDB()
	if err := dao.InitTables(db); err != nil {
		return nil, err
	}
	producer, err := event.NewStateEventProducer(testioc.InitMQ())
	if err != nil {
		return nil, err
	}
	repo := repository.NewExamRepository(dao.NewGORMExamDAO(db))
	return web.NewHandler(service.NewService(repo, producer)), nil
}
