package tele

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"

	"github.com/moodbox/moodbox/helpers"
	"github.com/moodbox/moodbox/log2"
)

const defaultNetworkTimeout = 30 * time.Second

type tele struct {
	log     *log2.Log
	enabled bool
	m       mqtt.Client
	mopt    *mqtt.ClientOptions
	stopCh  chan struct{}
	stopped sync.Once

	topicPrefix string
	topicState  string
	topicError  string
	topicMood   string
}

func (self *tele) Init(ctx context.Context, log *log2.Log, conf Config) error {
	self.log = log
	self.stopCh = make(chan struct{})
	if !conf.Enable {
		return nil
	}
	self.enabled = true

	mqttLog := self.log.Clone(log2.LDebug)
	mqtt.CRITICAL = mqttLog
	mqtt.ERROR = mqttLog
	mqtt.WARN = mqttLog
	if conf.MqttLogDebug {
		mqtt.DEBUG = mqttLog
	}

	mqttClientId := fmt.Sprintf("mb%d", conf.KioskId)
	credFun := func() (string, string) {
		return mqttClientId, conf.MqttPassword
	}

	self.topicPrefix = mqttClientId
	self.topicState = fmt.Sprintf("%s/w/1s", self.topicPrefix)
	self.topicError = fmt.Sprintf("%s/w/1e", self.topicPrefix)
	self.topicMood = fmt.Sprintf("%s/w/mood", self.topicPrefix)

	networkTimeout := helpers.IntSecondDefault(conf.NetworkTimeoutSec, defaultNetworkTimeout)
	if networkTimeout < 1*time.Second {
		networkTimeout = 1 * time.Second
	}
	connectTimeout := networkTimeout * 3
	keepaliveTimeout := helpers.IntSecondDefault(conf.KeepaliveSec, networkTimeout/2)

	defaultHandler := func(_ mqtt.Client, msg mqtt.Message) {
		self.log.Errorf("unexpected mqtt message: %v", msg)
	}

	tlsconf := new(tls.Config)
	if conf.TlsCaFile != "" {
		tlsconf.RootCAs = x509.NewCertPool()
		cabytes, err := ioutil.ReadFile(conf.TlsCaFile)
		if err != nil {
			return errors.Annotate(err, "tele tls_ca_file")
		}
		tlsconf.RootCAs.AppendCertsFromPEM(cabytes)
	}
	self.mopt = mqtt.NewClientOptions().
		AddBroker(conf.MqttBroker).
		SetAutoReconnect(true).
		SetBinaryWill(self.topicState, []byte{byte(StateProblem)}, 1, true).
		SetCleanSession(false).
		SetClientID(mqttClientId).
		SetConnectTimeout(connectTimeout).
		SetCredentialsProvider(credFun).
		SetDefaultPublishHandler(defaultHandler).
		SetKeepAlive(keepaliveTimeout).
		SetMaxReconnectInterval(connectTimeout).
		SetOrderMatters(false).
		SetPingTimeout(networkTimeout).
		SetTLSConfig(tlsconf).
		SetWriteTimeout(networkTimeout)
	self.m = mqtt.NewClient(self.mopt)

	go self.online()
	return nil
}

func (self *tele) Close() {
	self.stopped.Do(func() { close(self.stopCh) })
	if self.m != nil {
		for self.m.IsConnected() {
			self.m.Disconnect(uint(time.Second / time.Millisecond))
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func (self *tele) State(s State) {
	if !self.enabled {
		return
	}
	t := self.m.Publish(self.topicState, 1, true, []byte{byte(s)})
	_ = self.tokenWait(t, "publish state")
}

func (self *tele) Error(e error) {
	if e == nil || !self.enabled {
		return
	}
	t := self.m.Publish(self.topicError, 1, false, []byte(e.Error()))
	_ = self.tokenWait(t, "publish error")
}

func (self *tele) Submit(message string) error {
	if !self.enabled {
		return nil
	}
	t := self.m.Publish(self.topicMood, 1, false, []byte(message))
	return self.tokenWait(t, "publish mood")
}

func (self *tele) online() {
	if self.m.IsConnected() {
		return
	}

	for self.isRunning() {
		t := self.m.Connect()
		if self.tokenWait(t, "connect") == nil {
			break // success path
		}
		time.Sleep(1 * time.Second)
	}
}

func (self *tele) isRunning() bool {
	select {
	case <-self.stopCh:
		return false
	default:
		return true
	}
}

func (self *tele) tokenWait(t mqtt.Token, tag string) error {
	if !t.WaitTimeout(self.mopt.WriteTimeout) {
		err := errors.Errorf("%s timeout", tag)
		self.log.Errorf("tele: MQTT %s", err.Error())
		return err
	}
	if err := t.Error(); err != nil {
		err = errors.Annotate(err, tag)
		self.log.Errorf("tele: MQTT %s", err.Error())
		return err
	}
	return nil
}
