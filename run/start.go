package run

import (
	"github.com/gagarinchain/offences/common"
	"github.com/gagarinchain/offences/offence"
	"github.com/gagarinchain/offences/registry"
	"github.com/gagarinchain/offences/storage"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"os"
)

var stdoutLogFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} [%{shortfile}] [%{level}] %{message}`,
)

var log = logging.MustGetLogger("run")

type Context struct {
	storage  storage.Storage
	registry *registry.Registry
	relay    *registry.Relay
}

func (c *Context) Registry() *registry.Registry {
	return c.registry
}

func (c *Context) Relay() *registry.Relay {
	return c.relay
}

func (c *Context) Close() {
	c.storage.Close()
}

//Handlers receive everything the registry emits, nil fields fall back to null objects
type Handlers struct {
	OnOffence  offence.OnOffenceHandler
	LateReport offence.LateReportHandler
}

func CreateContext(s *common.Settings, h *Handlers) (*Context, error) {
	st, err := storage.Open(s.Storage.Backend, s.Storage.Path)
	if err != nil {
		return nil, err
	}

	escalation, err := registry.EscalationByName(s.Registry.Escalation, s.Registry.StepPercent)
	if err != nil {
		st.Close()
		return nil, errors.Wrap(err, "bad registry settings")
	}

	cfg := &registry.Config{Storage: st, Escalation: escalation}
	if h != nil {
		cfg.Handler = h.OnOffence
		cfg.LateReport = h.LateReport
	}
	r := registry.New(cfg)

	log.Debugf("Registry created on %v storage, escalation %T", s.Storage.Backend, escalation)

	return &Context{
		storage:  st,
		registry: r,
		relay:    registry.NewRelay(r),
	}, nil
}

//InitLogger sends log to stderr, stdout is left for command output
func InitLogger(logLevel string) {
	level, err := logging.LogLevel(logLevel)
	if err != nil {
		level = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, stdoutLogFormat)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	backendLeveled.SetLevel(level, "")

	logging.SetBackend(backendLeveled)
}
