package annotate

const colorHeader = `#pragma once

#include <cstdint>

class Color {
public:
    Color() {
    }

    void SetRed(uint8_t value) {
        r = value;
    }

    void Blend(const Color& other, float t) {
    }

private:
    uint8_t r;
};
`

const colorXML = `<?xml version="1.0"?>
<doc>
  <class>
    <name>Color</name>
    <methods>
      <function>
        <signature>void SetRed(uint8_t value)</signature>
        <description>Sets the red channel.</description>
        <param name="value">New red value.</param>
      </function>
      <function>
        <signature>void Blend(const Color&amp; other, float t)</signature>
        <description>Blends towards another color.</description>
        <param name="other">Target color.</param>
        <param name="t">Blend factor in [0, 1].</param>
      </function>
    </methods>
  </class>
</doc>
`
