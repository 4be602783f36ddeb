package telemetry

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"sync"
	"time"

	"github.com/quic-go/quic-go"

	"hoverrace/internal/logging"
)

// ALPN is the protocol name spectators must offer.
const ALPN = "hoverrace-telemetry"

type quicSub struct {
	conn *quic.Conn
	send chan []byte
}

// QUICPublisher opens one unidirectional stream per spectator connection
// and writes length-prefixed frames to it.
type QUICPublisher struct {
	log *logging.Logger
	ln  *quic.Listener

	mu   sync.RWMutex
	subs map[*quicSub]struct{}
}

// ListenQUIC starts listening with a throwaway self-signed certificate.
func ListenQUIC(addr string, log *logging.Logger) (*QUICPublisher, error) {
	tlsConf, err := selfSignedTLS()
	if err != nil {
		return nil, err
	}
	ln, err := quic.ListenAddr(addr, tlsConf, &quic.Config{
		MaxIdleTimeout:  30 * time.Second,
		KeepAlivePeriod: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("listen quic %s: %w", addr, err)
	}
	return &QUICPublisher{log: log, ln: ln, subs: make(map[*quicSub]struct{})}, nil
}

func (p *QUICPublisher) Addr() net.Addr { return p.ln.Addr() }

// Serve accepts spectators until ctx is cancelled or the listener closes.
func (p *QUICPublisher) Serve(ctx context.Context) error {
	p.log.Info("spectator quic listening", logging.String("addr", p.Addr().String()))
	go func() {
		<-ctx.Done()
		_ = p.ln.Close()
	}()
	for {
		conn, err := p.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, quic.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("accept quic: %w", err)
		}
		go p.handle(ctx, conn)
	}
}

func (p *QUICPublisher) handle(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()
	stream, err := conn.OpenUniStreamSync(ctx)
	if err != nil {
		p.log.Debug("quic stream", logging.Error(err))
		_ = conn.CloseWithError(1, "no stream")
		return
	}
	s := &quicSub{conn: conn, send: make(chan []byte, sendBuffer)}
	p.add(s)
	p.log.Info("spectator connected", logging.String("remote", remote), logging.String("transport", "quic"))
	defer func() {
		p.remove(s)
		_ = stream.Close()
		_ = conn.CloseWithError(0, "bye")
		p.log.Info("spectator disconnected", logging.String("remote", remote))
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-conn.Context().Done():
			return
		case b := <-s.send:
			if err := WriteFrame(stream, b); err != nil {
				return
			}
		}
	}
}

func (p *QUICPublisher) Clients() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

func (p *QUICPublisher) Publish(payload []byte) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for s := range p.subs {
		select {
		case s.send <- payload:
		default:
		}
	}
}

func (p *QUICPublisher) Close() error { return p.ln.Close() }

func (p *QUICPublisher) add(s *quicSub) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs[s] = struct{}{}
}

func (p *QUICPublisher) remove(s *quicSub) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, s)
}

func selfSignedTLS() (*tls.Config, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{Organization: []string{"hoverrace"}},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	cert, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}),
	)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{ALPN},
		MinVersion:   tls.VersionTLS13,
	}, nil
}
