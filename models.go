package transmission

// Fields is a free-form argument object passed to the daemon verbatim, used
// by the *-set methods whose accepted keys depend on the daemon version.
type Fields map[string]any

// TorrentStatus is the numeric "status" field of a torrent.
type TorrentStatus int

const (
	StatusStopped TorrentStatus = iota
	StatusCheckWait
	StatusChecking
	StatusDownloadWait
	StatusDownloading
	StatusSeedWait
	StatusSeeding
)

func (s TorrentStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusCheckWait:
		return "check-wait"
	case StatusChecking:
		return "checking"
	case StatusDownloadWait:
		return "download-wait"
	case StatusDownloading:
		return "downloading"
	case StatusSeedWait:
		return "seed-wait"
	case StatusSeeding:
		return "seeding"
	default:
		return "unknown"
	}
}

// DefaultTorrentFields are requested by GetTorrents when no fields are given.
var DefaultTorrentFields = []string{"id", "name", "status", "downloadedEver", "uploadedEver"}

// Torrent is a subset of the fields torrent-get can return. Fields that were
// not requested keep their zero value.
type Torrent struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	HashString        string        `json:"hashString"`
	Status            TorrentStatus `json:"status"`
	Error             int           `json:"error"`
	ErrorString       string        `json:"errorString"`
	DownloadDir       string        `json:"downloadDir"`
	DownloadedEver    int64         `json:"downloadedEver"`
	UploadedEver      int64         `json:"uploadedEver"`
	TotalSize         int64         `json:"totalSize"`
	SizeWhenDone      int64         `json:"sizeWhenDone"`
	LeftUntilDone     int64         `json:"leftUntilDone"`
	PercentDone       float64       `json:"percentDone"`
	RateDownload      int64         `json:"rateDownload"`
	RateUpload        int64         `json:"rateUpload"`
	UploadRatio       float64       `json:"uploadRatio"`
	Eta               int64         `json:"eta"`
	AddedDate         int64         `json:"addedDate"`
	DoneDate          int64         `json:"doneDate"`
	QueuePosition     int           `json:"queuePosition"`
	IsFinished        bool          `json:"isFinished"`
	IsStalled         bool          `json:"isStalled"`
	PeersConnected    int           `json:"peersConnected"`
	MagnetLink        string        `json:"magnetLink"`
	Labels            []string      `json:"labels"`
	BandwidthPriority int           `json:"bandwidthPriority"`
	Group             string        `json:"group"`
	Files             []TorrentFile `json:"files"`
	TrackerStats      []TrackerStat `json:"trackerStats"`
}

// TorrentFile describes one file inside a torrent.
type TorrentFile struct {
	Name           string `json:"name"`
	Length         int64  `json:"length"`
	BytesCompleted int64  `json:"bytesCompleted"`
}

// TrackerStat is one entry of the "trackerStats" torrent field.
type TrackerStat struct {
	ID                    int    `json:"id"`
	Announce              string `json:"announce"`
	Host                  string `json:"host"`
	Tier                  int    `json:"tier"`
	SeederCount           int    `json:"seederCount"`
	LeecherCount          int    `json:"leecherCount"`
	LastAnnounceSucceeded bool   `json:"lastAnnounceSucceeded"`
	LastAnnounceResult    string `json:"lastAnnounceResult"`
}

// TorrentList is the torrent-get payload. Removed is only filled when the
// call selected RecentlyActive.
type TorrentList struct {
	Torrents []Torrent `json:"torrents"`
	Removed  []int64   `json:"removed,omitempty"`
}

// AddTorrentOptions are the torrent-add arguments. Exactly one of Filename
// (URL, magnet link or daemon-side path) or Metainfo (base64 .torrent) is required.
type AddTorrentOptions struct {
	Filename          string   `json:"filename,omitempty"`
	Metainfo          string   `json:"metainfo,omitempty"`
	DownloadDir       string   `json:"download-dir,omitempty"`
	Paused            *bool    `json:"paused,omitempty"`
	PeerLimit         int      `json:"peer-limit,omitempty"`
	BandwidthPriority int      `json:"bandwidthPriority,omitempty"`
	Labels            []string `json:"labels,omitempty"`
	Cookies           string   `json:"cookies,omitempty"`
	FilesWanted       []int    `json:"files-wanted,omitempty"`
	FilesUnwanted     []int    `json:"files-unwanted,omitempty"`
}

// TorrentRef identifies a torrent the daemon just added.
type TorrentRef struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	HashString string `json:"hashString"`
}

// AddedTorrent is the torrent-add payload. Exactly one field is set; a
// duplicate is still a successful call.
type AddedTorrent struct {
	Added     *TorrentRef `json:"torrent-added,omitempty"`
	Duplicate *TorrentRef `json:"torrent-duplicate,omitempty"`
}

// Torrent returns whichever reference the daemon sent.
func (a AddedTorrent) Torrent() *TorrentRef {
	if a.Added != nil {
		return a.Added
	}
	return a.Duplicate
}

// RenamedPath is the torrent-rename-path payload.
type RenamedPath struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// Session is a subset of session-get fields.
type Session struct {
	Version               string  `json:"version"`
	RPCVersion            int     `json:"rpc-version"`
	RPCVersionMinimum     int     `json:"rpc-version-minimum"`
	SessionID             string  `json:"session-id"`
	ConfigDir             string  `json:"config-dir"`
	DownloadDir           string  `json:"download-dir"`
	PeerPort              int     `json:"peer-port"`
	Encryption            string  `json:"encryption"`
	SpeedLimitDown        int     `json:"speed-limit-down"`
	SpeedLimitDownEnabled bool    `json:"speed-limit-down-enabled"`
	SpeedLimitUp          int     `json:"speed-limit-up"`
	SpeedLimitUpEnabled   bool    `json:"speed-limit-up-enabled"`
	AltSpeedDown          int     `json:"alt-speed-down"`
	AltSpeedUp            int     `json:"alt-speed-up"`
	AltSpeedEnabled       bool    `json:"alt-speed-enabled"`
	DownloadQueueEnabled  bool    `json:"download-queue-enabled"`
	DownloadQueueSize     int     `json:"download-queue-size"`
	SeedQueueEnabled      bool    `json:"seed-queue-enabled"`
	SeedQueueSize         int     `json:"seed-queue-size"`
	SeedRatioLimit        float64 `json:"seedRatioLimit"`
	SeedRatioLimited      bool    `json:"seedRatioLimited"`
	BlocklistEnabled      bool    `json:"blocklist-enabled"`
	BlocklistSize         int     `json:"blocklist-size"`
	BlocklistURL          string  `json:"blocklist-url"`
}

// Stats are transfer totals, either cumulative or for the current session.
type Stats struct {
	UploadedBytes   int64 `json:"uploadedBytes"`
	DownloadedBytes int64 `json:"downloadedBytes"`
	FilesAdded      int64 `json:"filesAdded"`
	SessionCount    int64 `json:"sessionCount"`
	SecondsActive   int64 `json:"secondsActive"`
}

// SessionStats is the session-stats payload.
type SessionStats struct {
	ActiveTorrentCount int   `json:"activeTorrentCount"`
	PausedTorrentCount int   `json:"pausedTorrentCount"`
	TorrentCount       int   `json:"torrentCount"`
	DownloadSpeed      int64 `json:"downloadSpeed"`
	UploadSpeed        int64 `json:"uploadSpeed"`
	CumulativeStats    Stats `json:"cumulative-stats"`
	CurrentStats       Stats `json:"current-stats"`
}

// BlocklistUpdate is the blocklist-update payload.
type BlocklistUpdate struct {
	BlocklistSize int `json:"blocklist-size"`
}

// PortTest is the port-test payload.
type PortTest struct {
	PortIsOpen bool   `json:"port-is-open"`
	IPProtocol string `json:"ip_protocol,omitempty"`
}

// FreeSpace is the free-space payload.
type FreeSpace struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size-bytes"`
	TotalSize int64  `json:"total_size"`
}

// BandwidthGroup is one entry of the group-get payload.
type BandwidthGroup struct {
	Name                  string `json:"name"`
	HonorsSessionLimits   bool   `json:"honorsSessionLimits"`
	SpeedLimitDown        int    `json:"speed-limit-down"`
	SpeedLimitDownEnabled bool   `json:"speed-limit-down-enabled"`
	SpeedLimitUp          int    `json:"speed-limit-up"`
	SpeedLimitUpEnabled   bool   `json:"speed-limit-up-enabled"`
}

// BandwidthGroups is the group-get payload.
type BandwidthGroups struct {
	Groups []BandwidthGroup `json:"group"`
}

// MagnetLink holds the parts of a magnet URI this package cares about.
type MagnetLink struct {
	Hash             string
	DisplayName      string
	Trackers         []string
	ExactLength      string
	ExactSource      string
	Keywords         string
	AcceptableSource string
}
