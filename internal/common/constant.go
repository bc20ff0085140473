package common

// SystemActor is the audit-trail identity stamped on accounts created or
// modified without an authenticated caller (self sign-up, operator tooling).
const SystemActor = "system"
