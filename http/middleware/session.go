package middleware

import (
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/session"
)

type sessions struct {
	store session.Storer
}

// Sessions loads the *session.Session for a request before it is dispatched,
// storing it under switchback.SessionKey, and saves it into the response's cookies afterwards
// if the handler changed it.
//
// A session cookie that cannot be decoded is replaced with a new session.
//
// If store is nil, Sessions does nothing.
func Sessions(store session.Storer) Middleware {
	if store == nil {
		return Hooks{}
	}

	return sessions{store: store}
}

func (s sessions) ProcessRequest(r *req.Request) error {
	sess, err := s.store.GetSession(r.Raw())
	if sess == nil {
		return err
	}

	r.WithValue(switchback.SessionKey, sess)
	return nil
}

func (s sessions) ProcessResponse(r *req.Request, w *resp.Response) error {
	sess, err := session.FromRequest(r)
	if err != nil || !sess.Dirty() {
		return nil
	}

	return sess.SaveHeader(r.Raw(), w.Header())
}
