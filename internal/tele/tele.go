package tele

import (
	"context"
	"sync"
	"time"

	"github.com/Arnispl/VendingMachine/helpers"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/spq"
)

const (
	DefaultNetworkTimeout = 30 * time.Second
	retryDelayMin         = 1 * time.Second
	retryDelayMax         = 5 * time.Minute
	logMsgDisabled        = "tele disabled"
)

// Tele contract:
//   - Init() fails only with invalid config, network issues ignored
//   - Transaction/Error/Report public API calls block at most for disk write,
//     messages are delivered in background
//   - Telemetry messages delivered at least once
//   - State messages may be lost
type tele struct { //nolint:maligned
	config    tele_config.Config
	log       *log2.Log
	transport Transporter
	q         *spq.Queue
	alive     *alive.Alive
	backoff   helpers.Backoff
	vmId      int32
	stat      tele_api.Stat

	stateMu      sync.Mutex
	currentState tele_api.State
}

func New() tele_api.Teler {
	return &tele{}
}
func NewWithTransporter(trans Transporter) tele_api.Teler {
	return &tele{transport: trans}
}

func (self *tele) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config) error {
	self.config = teleConfig
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	self.vmId = int32(self.config.VmId)
	self.stat.Lock()
	self.stat.Locked_Reset()
	self.stat.Unlock()
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return nil
	}
	if self.config.PersistPath == "" {
		return errors.Errorf("config: tele.persist_path is empty")
	}
	if self.backoff.Min == 0 {
		self.backoff = helpers.Backoff{Min: retryDelayMin, Max: retryDelayMax, K: 2, Res: time.Second}
	}

	// test code sets .transport
	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	willPayload := []byte{byte(tele_api.State_Disconnected)}
	if err := self.transport.Init(ctx, log, teleConfig, willPayload); err != nil {
		return errors.Annotate(err, "tele transport")
	}

	var err error
	self.q, err = spq.Open(self.config.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}

	self.alive = alive.NewAlive()
	self.alive.Add(1)
	go self.qworker()
	self.State(tele_api.State_Boot)
	return nil
}

func (self *tele) Close() {
	if self.alive == nil {
		return
	}
	self.alive.Stop()
	if err := self.q.Close(); err != nil {
		self.log.Errorf("tele queue close err=%v", err)
	}
	self.alive.Wait()
	self.transport.Close()
}

func (self *tele) enabled() bool {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return false
	}
	return true
}

func (self *tele) Error(e error) {
	if !self.enabled() {
		return
	}
	tm := &tele_api.Telemetry{
		Error: &tele_api.Telemetry_Error{Message: e.Error()},
	}
	if err := self.qpushTelemetry(tm); err != nil {
		// not self.log.Errorf, it may be wired back to tele.Error
		self.log.Logf(log2.LError, "CRITICAL qpushTelemetry telemetry_error=%#v err=%v", tm.Error, err)
	}
}

func (self *tele) Report(inventory *tele_api.Telemetry_Inventory, serviceTag bool) error {
	if !self.enabled() {
		return nil
	}
	tm := &tele_api.Telemetry{
		Inventory: inventory,
		AtService: serviceTag,
	}
	err := self.qpushTelemetry(tm)
	if err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry tm=%#v err=%v", tm, err)
	}
	return err
}

func (self *tele) State(s tele_api.State) {
	if !self.enabled() {
		return
	}
	self.stateMu.Lock()
	changed := self.currentState != s
	self.currentState = s
	self.stateMu.Unlock()
	if changed {
		self.transport.SendState([]byte{byte(s)})
	}
}

func (self *tele) StatModify(fun func(s *tele_api.Stat)) {
	if !self.enabled() {
		return
	}
	helpers.WithLock(&self.stat, func() { fun(&self.stat) })
}

func (self *tele) Transaction(tx *tele_api.Telemetry_Transaction) {
	if !self.enabled() {
		return
	}
	err := self.qpushTelemetry(&tele_api.Telemetry{Transaction: tx})
	if err != nil {
		self.log.Errorf("CRITICAL transaction=%#v err=%v", tx, err)
	}
}

func (self *tele) qworker() {
	defer self.alive.Done()
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			// success path
			b := box.Bytes()
			var del bool
			del, err = self.qhandle(b)
			if err != nil {
				self.log.Errorf("tele qhandle b=%x err=%v", b, err)
			}
			if del {
				self.backoff.Reset()
				if err = self.q.Delete(box); err != nil {
					self.log.Errorf("tele qhandle Delete b=%x err=%v", b, err)
				}
			} else {
				if err = self.q.DeletePush(box); err != nil {
					self.log.Errorf("tele qhandle DeletePush b=%x err=%v", b, err)
				}
				if !self.sleep(self.backoff.DelayAfter(false)) {
					return
				}
			}

		case spq.ErrClosed:
			if self.alive.IsRunning() {
				self.log.Errorf("CRITICAL tele spq closed unexpectedly")
			}
			return

		default:
			self.log.Errorf("CRITICAL tele spq err=%v", err)
			if !self.sleep(self.backoff.DelayAfter(false)) {
				return
			}
		}
	}
}

// false when stopped while sleeping
func (self *tele) sleep(d time.Duration) bool {
	self.log.Debugf("tele retry delay=%s", d)
	tmr := time.NewTimer(d)
	defer tmr.Stop()
	select {
	case <-tmr.C:
		return true
	case <-self.alive.StopChan():
		return false
	}
}

// denote value type in persistent queue bytes form
const (
	qTelemetry byte = 2
)

// true = delete from queue
func (self *tele) qhandle(b []byte) (bool, error) {
	if len(b) == 0 {
		// what else can we do?
		return true, errors.Errorf("tele spq peek=empty")
	}

	switch b[0] {
	case qTelemetry:
		var tm tele_api.Telemetry
		if err := proto.Unmarshal(b[1:], &tm); err != nil {
			return true, err
		}
		return self.qsendTelemetry(&tm), nil

	default:
		return true, errors.Errorf("unknown kind=%d", b[0])
	}
}

func (self *tele) qpushTelemetry(tm *tele_api.Telemetry) error {
	if tm.VmId == 0 {
		tm.VmId = self.vmId
	}
	if tm.Time == 0 {
		tm.Time = time.Now().UnixNano()
	}
	self.stat.Lock()
	defer self.stat.Unlock()
	tm.Stat = &self.stat.Telemetry_Stat
	err := self.qpushTagProto(qTelemetry, tm)
	tm.Stat = nil
	self.stat.Locked_Reset()
	return err
}

func (self *tele) qpushTagProto(tag byte, pb proto.Message) error {
	b, err := proto.Marshal(pb)
	if err != nil {
		return errors.Annotate(err, "tele marshal")
	}
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, tag)
	buf = append(buf, b...)
	return self.q.Push(buf)
}

func (self *tele) qsendTelemetry(tm *tele_api.Telemetry) bool {
	payload, err := proto.Marshal(tm)
	if err != nil {
		self.log.Errorf("CRITICAL telemetry Marshal tm=%#v err=%v", tm, err)
		return true // retry will not help
	}
	return self.transport.SendTelemetry(payload)
}
