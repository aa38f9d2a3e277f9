package extractor

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	emptyObject = datatypes.JSON("{}")
	emptyList   = datatypes.JSON("[]")
)

// renderObject and renderList never fail: a value that cannot be encoded is
// replaced by an empty value of the same shape so the transaction still gets
// indexed.
func renderObject(field string, v interface{}, log *logrus.Entry) datatypes.JSON {
	return render(field, v, emptyObject, log)
}

func renderList(field string, v interface{}, log *logrus.Entry) datatypes.JSON {
	return render(field, v, emptyList, log)
}

func render(field string, v interface{}, empty datatypes.JSON, log *logrus.Entry) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		degradedFields.WithLabelValues(field).Inc()
		log.WithError(err).WithField("field", field).Warn("serialization failed, storing empty value")
		return empty
	}
	return datatypes.JSON(b)
}
