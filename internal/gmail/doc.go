// Package gmail provides a thin client over the Gmail API for sending mail
// and managing drafts.
//
// The client covers exactly the operations the tool exposes: immediate send,
// draft create/update/send/list, the authenticated profile (sender address),
// and the primary send-as signature (cached per invocation). Permission and
// quota errors from the API are mapped to actionable messages; everything
// else is surfaced verbatim, with no retry policy on top of the transport.
package gmail
