package nets

import (
	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
