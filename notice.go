package glint

import (
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint/dom"
)

// NoticeKind is a notice's severity.
type NoticeKind int

const (
	// NoticeSuccess bounces in and fades after Config.SuccessDelayMS.
	NoticeSuccess NoticeKind = iota

	// NoticeError shakes in and fades after Config.ErrorDelayMS.
	NoticeError
)

// String returns the severity name.
func (k NoticeKind) String() string {
	if k == NoticeError {
		return "error"
	}
	return "success"
}

func (k NoticeKind) className() string {
	if k == NoticeError {
		return "alert alert-error shake"
	}
	return "alert alert-success bounce-in"
}

const (
	classZoomOut = "zoom-out"
	noticeIDAttr = "data-notice-id"
)

// Notify inserts a notice at the top of the container and returns its id.
//
// Success notices start their exit animation after Config.SuccessDelayMS
// and error notices after Config.ErrorDelayMS. Either is removed
// Config.DismissMS later. Each notice runs its own timers, so notices
// stack newest first. Without a container nothing is inserted and the id is
// empty.
func (p *Page) Notify(kind NoticeKind, message string) string {
	cfg := p.Config()
	container := p.query(cfg.Container)
	if container == nil {
		return ""
	}
	alert := p.doc.CreateElement("div")
	if alert == nil {
		return ""
	}

	id := p.newID()
	alert.SetClassName(kind.className())
	alert.SetAttr(noticeIDAttr, id)
	alert.SetText(message)
	container.InsertBefore(alert, container.FirstChild())

	delay := cfg.SuccessDelayMS
	if kind == NoticeError {
		delay = cfg.ErrorDelayMS
	}

	ctx := p.context()
	clock := p.sched.Clock()
	created := clock.Now()
	p.metrics.OnTransientCreated(TransientNotice)
	capitan.Emit(ctx, NoticeShown,
		KeyNoticeID.Field(id),
		KeyNoticeKind.Field(kind.String()),
		KeyMessage.Field(message),
	)

	p.sched.After(millis(delay), func() {
		alert.AddClass(classZoomOut)
		capitan.Emit(ctx, NoticeDismissing,
			KeyNoticeID.Field(id),
		)

		p.sched.After(millis(cfg.DismissMS), func() {
			alert.Remove()

			lifetime := clock.Since(created)
			p.metrics.OnTransientExpired(TransientNotice, lifetime)
			capitan.Emit(ctx, NoticeRemoved,
				KeyNoticeID.Field(id),
				KeyLifetime.Field(lifetime),
			)
		})
	})
	return id
}

// ShowSuccessMessage shows a success notice.
func (p *Page) ShowSuccessMessage(message string) {
	p.Notify(NoticeSuccess, message)
}

// ShowErrorMessage shows an error notice.
func (p *Page) ShowErrorMessage(message string) {
	p.Notify(NoticeError, message)
}

// FindNotice returns the notice with the given id while it is on the page.
func (p *Page) FindNotice(id string) dom.Node {
	if id == "" {
		return nil
	}
	return p.query("[" + noticeIDAttr + "=\"" + id + "\"]")
}
