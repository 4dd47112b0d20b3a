package tele

import (
	"context"
	"fmt"
	"time"

	"github.com/Arnispl/VendingMachine/helpers"
	"github.com/Arnispl/VendingMachine/log2"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
)

const defaultStorePath = "/var/lib/vender/telemessages"

type transportMqtt struct {
	log            *log2.Log
	m              mqtt.Client
	mopt           *mqtt.ClientOptions
	networkTimeout time.Duration

	topicPrefix    string
	topicConnect   string
	topicState     string
	topicTelemetry string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, willPayload []byte) error {
	self.log = log
	mqtt.ERROR = log
	mqtt.CRITICAL = log
	mqtt.WARN = log
	if teleConfig.MqttLogDebug {
		mqtt.DEBUG = log
	}
	if teleConfig.MqttBroker == "" {
		return errors.Errorf("config: tele.mqtt_broker is empty")
	}

	mqttClientId := fmt.Sprintf("vm%d", teleConfig.VmId)
	self.topicPrefix = mqttClientId // coincidence
	self.topicConnect = fmt.Sprintf("%s/c", self.topicPrefix)
	self.topicState = fmt.Sprintf("%s/w/1s", self.topicPrefix)
	self.topicTelemetry = fmt.Sprintf("%s/w/1t", self.topicPrefix)
	self.networkTimeout = helpers.IntSecondDefault(teleConfig.NetworkTimeoutSec, DefaultNetworkTimeout)
	keepAlive := helpers.IntSecondDefault(teleConfig.KeepaliveSec, 60*time.Second)
	pingTimeout := helpers.IntSecondDefault(teleConfig.PingTimeoutSec, 30*time.Second)
	retryInterval := helpers.IntSecondDefault(teleConfig.KeepaliveSec/2, 30*time.Second)
	storePath := teleConfig.StorePath
	if storePath == "" {
		storePath = defaultStorePath
	}

	self.mopt = mqtt.NewClientOptions().
		AddBroker(teleConfig.MqttBroker).
		SetBinaryWill(self.topicConnect, willPayload, 1, true).
		SetCleanSession(false).
		SetClientID(mqttClientId).
		SetUsername(mqttClientId).
		SetPassword(teleConfig.MqttPassword).
		SetKeepAlive(keepAlive).
		SetPingTimeout(pingTimeout).
		SetOrderMatters(false).
		SetStore(mqtt.NewFileStore(storePath)).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval).
		SetAutoReconnect(true).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler)
	self.m = mqtt.NewClient(self.mopt)
	// network errors are not fatal, client keeps retrying
	if token := self.m.Connect(); token.Error() != nil {
		self.log.Errorf("tele mqtt connect err=%v", token.Error())
	}
	return nil
}

func (self *transportMqtt) Close() {
	if self.m == nil {
		return
	}
	self.log.Infof("tele mqtt disconnect")
	self.publish(self.topicConnect, true, []byte{0x00})
	self.m.Disconnect(uint(self.networkTimeout / time.Millisecond))
}

func (self *transportMqtt) SendState(payload []byte) bool {
	self.log.Debugf("tele mqtt state payload=%x", payload)
	return self.publish(self.topicState, true, payload)
}

func (self *transportMqtt) SendTelemetry(payload []byte) bool {
	return self.publish(self.topicTelemetry, false, payload)
}

func (self *transportMqtt) publish(topic string, retained bool, payload []byte) bool {
	token := self.m.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(self.networkTimeout) {
		self.log.Debugf("tele mqtt publish topic=%s timeout", topic)
		return false
	}
	if err := token.Error(); err != nil {
		self.log.Debugf("tele mqtt publish topic=%s err=%v", topic, err)
		return false
	}
	return true
}

func (self *transportMqtt) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("tele mqtt connection lost err=%v", err)
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("tele mqtt connect")
	c.Publish(self.topicConnect, 1, true, []byte{0x01})
}
