// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package exampkg

import (
	"sync"

	"github.com/ecodeclub/examctrl/internal/exampkg/internal/event"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository/dao"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/service"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitHandler(db *egorm.Component, q mq.MQ) (*Handler, error) {
	wire.Build(
		InitExamDAO,
		event.NewStateEventProducer,
		repository.NewExamRepository,
		service.NewService,
		web.NewHandler,
	)
	return new(Handler), nil
}

var daoOnce = sync.Once{}

func InitTableOnce(db *egorm.Component) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func InitExamDAO(db *egorm.Component) dao.ExamDAO {
	InitTableOnce(db)
	return dao.NewGORMExamDAO(db)
}

type Handler = web.Handler

type Service = service.Service
