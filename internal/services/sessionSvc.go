package services

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/awcullen/opcua/client"
	"github.com/awcullen/opcua/ua"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amine-amaach/uaWalker/internal/config"
)

// SessionSvc owns the secure channel and session with the server. It is
// the only component that talks to the transport; everything above goes
// through it.
type SessionSvc struct {
	Endpoint string
	ch       *client.Client
	log      *logrus.Logger
}

// NewSessionSvc dials the endpoint and activates a session using the
// configured identity: X.509 certificate when cert/key files are set,
// username/password when a username is set, anonymous otherwise.
func NewSessionSvc(ctx context.Context, endpoint string, auth config.Auth, log *logrus.Logger) (*SessionSvc, error) {
	opts := []client.Option{
		client.WithInsecureSkipVerify(),
	}

	switch {
	case auth.CertFile != "" && auth.KeyFile != "":
		cert, key, err := loadCertificate(auth.CertFile, auth.KeyFile)
		if err != nil {
			return nil, err
		}
		log.WithField("cert", auth.CertFile).Debugln("Using X.509 identity")
		opts = append(opts,
			client.WithX509Identity([]byte(cert), key),
			client.WithSecurityPolicyURI(ua.SecurityPolicyURIBestAvailable, ua.MessageSecurityModeInvalid),
		)
	case auth.Username != "":
		log.WithField("username", auth.Username).Debugln("Using username identity")
		opts = append(opts, client.WithUserNameIdentity(auth.Username, auth.Password))
	default:
		// Anonymous is the client default; nothing to configure.
		log.Debugln("Using anonymous identity")
	}

	log.WithField("endpoint", endpoint).Infoln("Connecting to OPC UA server")
	ch, err := client.Dial(ctx, endpoint, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", endpoint)
	}
	log.Infoln("Session established")
	return &SessionSvc{Endpoint: endpoint, ch: ch, log: log}, nil
}

// Close releases the session and the underlying secure channel.
func (s *SessionSvc) Close(ctx context.Context) error {
	if s.ch == nil {
		return nil
	}
	err := s.ch.Close(ctx)
	s.ch = nil
	if err != nil {
		// The server may have dropped the channel already.
		s.log.WithError(err).Debugln("Close returned an error")
		return err
	}
	s.log.Infoln("Session closed")
	return nil
}

// Browse forwards one browse request over the session.
func (s *SessionSvc) Browse(ctx context.Context, req *ua.BrowseRequest) (*ua.BrowseResponse, error) {
	return s.ch.Browse(ctx, req)
}

// Read forwards one read request over the session.
func (s *SessionSvc) Read(ctx context.Context, req *ua.ReadRequest) (*ua.ReadResponse, error) {
	return s.ch.Read(ctx, req)
}

// Call forwards one call request over the session.
func (s *SessionSvc) Call(ctx context.Context, req *ua.CallRequest) (*ua.CallResponse, error) {
	return s.ch.Call(ctx, req)
}

// DiscoverEndpoints asks the server for its endpoint descriptions. This
// uses a separate discovery-only channel, so it works before (or
// without) an activated session.
func DiscoverEndpoints(ctx context.Context, endpoint string) ([]ua.EndpointDescription, error) {
	res, err := client.GetEndpoints(ctx, &ua.GetEndpointsRequest{EndpointURL: endpoint})
	if err != nil {
		return nil, errors.Wrapf(err, "discovering endpoints of %s", endpoint)
	}
	return res.Endpoints, nil
}

// ReadValues reads the value attribute of each node in one request.
// The result slice is index-aligned with the input.
func (s *SessionSvc) ReadValues(ctx context.Context, ids []ua.NodeID) ([]ua.DataValue, error) {
	nodes := make([]ua.ReadValueID, len(ids))
	for i, id := range ids {
		nodes[i] = ua.ReadValueID{NodeID: id, AttributeID: ua.AttributeIDValue}
	}
	res, err := s.Read(ctx, &ua.ReadRequest{
		NodesToRead:        nodes,
		TimestampsToReturn: ua.TimestampsToReturnBoth,
	})
	if err != nil {
		return nil, err
	}
	return res.Results, nil
}

func loadCertificate(certFile, keyFile string) (ua.ByteString, *rsa.PrivateKey, error) {
	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return "", nil, errors.Wrap(err, "reading certificate file")
	}
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return "", nil, errors.Errorf("no certificate found in %s", certFile)
	}
	cert := ua.ByteString(block.Bytes)

	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return "", nil, errors.Wrap(err, "reading private key file")
	}
	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return "", nil, errors.Errorf("no private key found in %s", keyFile)
	}
	key, err := x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
	if err != nil {
		// PKCS#8 wrapped RSA keys are common too.
		parsed, err8 := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
		if err8 != nil {
			return "", nil, errors.Wrap(err, "parsing private key")
		}
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return "", nil, errors.Errorf("private key in %s is not RSA", keyFile)
		}
		return cert, rsaKey, nil
	}
	return cert, key, nil
}
