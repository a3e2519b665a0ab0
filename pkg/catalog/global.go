package catalog

// Server is a FEDERATED server definition.
type Server struct {
	Named     `yaml:",inline"`
	Owner     *Catalog `json:"-" yaml:"-"`
	Wrapper   string   `json:"wrapper" yaml:"wrapper"`
	Host      string   `json:"host,omitempty" yaml:"host,omitempty"`
	Database  string   `json:"database,omitempty" yaml:"database,omitempty"`
	User      string   `json:"user,omitempty" yaml:"user,omitempty"`
	Password  string   `json:"password,omitempty" yaml:"password,omitempty"`
	Socket    string   `json:"socket,omitempty" yaml:"socket,omitempty"`
	OwnerUser string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	Port      int      `json:"port,omitempty" yaml:"port,omitempty"`
}

// Kind implements Object.
func (s *Server) Kind() Kind { return KindServer }

// Tablespace is a general or undo tablespace.
type Tablespace struct {
	Named    `yaml:",inline"`
	Owner    *Catalog `json:"-" yaml:"-"`
	DataFile string   `json:"data_file,omitempty" yaml:"data_file,omitempty"`
	// LogfileGroup is set once LogfileGroupName resolves.
	LogfileGroup     *LogfileGroup `json:"-" yaml:"-"`
	LogfileGroupName string        `json:"logfile_group,omitempty" yaml:"logfile_group,omitempty"`

	InitialSize    uint64 `json:"initial_size,omitempty" yaml:"initial_size,omitempty"`
	AutoextendSize uint64 `json:"autoextend_size,omitempty" yaml:"autoextend_size,omitempty"`
	MaxSize        uint64 `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	ExtentSize     uint64 `json:"extent_size,omitempty" yaml:"extent_size,omitempty"`
	FileBlockSize  uint64 `json:"file_block_size,omitempty" yaml:"file_block_size,omitempty"`
	NodeGroup      int    `json:"node_group" yaml:"node_group"`
	Wait           bool   `json:"wait,omitempty" yaml:"wait,omitempty"`
	Comment        string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Engine         string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Encryption     string `json:"encryption,omitempty" yaml:"encryption,omitempty"`
	Undo           bool   `json:"undo,omitempty" yaml:"undo,omitempty"`
}

// Kind implements Object.
func (t *Tablespace) Kind() Kind { return KindTablespace }

// LogfileGroup is an NDB logfile group.
type LogfileGroup struct {
	Named          `yaml:",inline"`
	Owner          *Catalog `json:"-" yaml:"-"`
	UndoFile       string   `json:"undo_file" yaml:"undo_file"`
	InitialSize    uint64   `json:"initial_size,omitempty" yaml:"initial_size,omitempty"`
	UndoBufferSize uint64   `json:"undo_buffer_size,omitempty" yaml:"undo_buffer_size,omitempty"`
	RedoBufferSize uint64   `json:"redo_buffer_size,omitempty" yaml:"redo_buffer_size,omitempty"`
	NodeGroup      int      `json:"node_group" yaml:"node_group"`
	Wait           bool     `json:"wait,omitempty" yaml:"wait,omitempty"`
	Comment        string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Engine         string   `json:"engine,omitempty" yaml:"engine,omitempty"`
}

// Kind implements Object.
func (l *LogfileGroup) Kind() Kind { return KindLogfileGroup }

// User is an account named in a DEFINER clause.
type User struct {
	Named `yaml:",inline"`
	Owner *Catalog `json:"-" yaml:"-"`
	Host  string   `json:"host,omitempty" yaml:"host,omitempty"`
}

// Kind implements Object.
func (u *User) Kind() Kind { return KindUser }

// Account renders the user as name@host.
func (u *User) Account() string {
	if u.Host == "" {
		return u.Name
	}
	return u.Name + "@" + u.Host
}
