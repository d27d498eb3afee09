package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type TenantID string

func NewTenantID(id string) TenantID { return TenantID(id) }
func (t TenantID) String() string    { return string(t) }
func (t TenantID) IsEmpty() bool     { return string(t) == "" }

type CaseID string

func NewCaseID(id string) CaseID { return CaseID(id) }
func (c CaseID) String() string  { return string(c) }
func (c CaseID) IsEmpty() bool   { return string(c) == "" }

type DocumentID string

func NewDocumentID(id string) DocumentID { return DocumentID(id) }
func (d DocumentID) String() string      { return string(d) }
func (d DocumentID) IsEmpty() bool       { return string(d) == "" }

type SessionID string

func NewSessionID(id string) SessionID { return SessionID(id) }
func (s SessionID) String() string     { return string(s) }
func (s SessionID) IsEmpty() bool      { return string(s) == "" }
